package config

// View is an accessor bound to one index of a Container.
//
// It is live: datasets loaded or cleared after the View was created are
// observed by it.
type View struct {
	container *Container
	index     string
}

// Index returns a View of the dataset stored at name.
func (c *Container) Index(name string) View {
	return View{container: c, index: name}
}

// Name returns the index the View is bound to.
func (v View) Name() string {
	return v.index
}

// Data returns the whole dataset at the View's index, nil when nothing is stored there.
func (v View) Data() Dataset {
	dataset, _ := v.container.Lookup(v.index)

	return dataset
}

// Get is GetFrom pre-bound to the View's index.
func (v View) Get(key string, def any) any {
	return v.container.GetFrom(v.index, key, def)
}
