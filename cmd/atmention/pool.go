package main

import (
	"fmt"
	"os"

	"github.com/iw2rmb/atmention/mention"
)

// demoPool is used when no pool file is configured.
var demoPool = []mention.Entity{
	{ID: "jdoe", Name: "John", Display: "John Doe", Aliases: []string{"johnny"}},
	{ID: "jordan", Name: "Jordan"},
	{ID: "mkim", Name: "Mary", Display: "Mary Kim"},
	{ID: "dev", Name: "dev team", Value: "@team/dev", Match: mention.MatchPrefix},
	{ID: "jimin", Name: "지민"},
}

func loadPool(path string) ([]mention.Entity, error) {
	if path == "" {
		return append([]mention.Entity(nil), demoPool...), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool: %w", err)
	}
	entities, err := mention.DecodeEntities(data)
	if err != nil {
		return nil, fmt.Errorf("pool %s: %w", path, err)
	}
	return entities, nil
}
