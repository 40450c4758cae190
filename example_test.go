package config_test

import (
	"fmt"

	config "github.com/volnix/config"
)

func ExampleContainer() {
	provider := config.NewMemoryProvider(map[string]config.Dataset{
		"app": {
			"name": "app",
			"database": map[string]any{
				"host": "localhost",
				"port": 5432,
			},
		},
		"app_production": {
			"database": map[string]any{
				"host": "db.example.com",
			},
		},
	})

	container := config.New(
		config.WithProvider(provider),
		config.WithEnvironment("production"),
	)

	_, err := container.Load("app")
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(container.Get("name", ""))
	fmt.Println(container.Walk("database:host", "unknown"))
	fmt.Println(container.Walk("database:port", 0))
	fmt.Println(container.Walk("database:user", "postgres"))
	// Output:
	// app
	// db.example.com
	// 5432
	// postgres
}

func ExampleContainer_LoadSet() {
	provider := config.NewMemoryProvider(map[string]config.Dataset{
		"default": {"name": "default"},
		"extra":   {"foo": "Foo"},
	})

	container := config.New(config.WithProvider(provider))

	_, err := container.LoadSet([]string{"default", "extra"}, true)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	extra := container.Index("extra")

	fmt.Println(container.Indexes())
	fmt.Println(extra.Get("foo", nil))
	fmt.Println(extra.Get("missing", false))
	// Output:
	// [default extra]
	// Foo
	// false
}

func ExampleContainer_Load_missing() {
	container := config.New()

	_, err := container.Load("default")
	fmt.Println(err)
	// Output: loading dataset "default": dataset not found: default
}
