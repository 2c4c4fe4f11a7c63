// Command schema writes JSON schemas for the documents clients and tools
// exchange with the simulation host: zone descriptors, snapshots and
// client commands.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"babayaga/internal/infrastructure/storage"
	"babayaga/pkg/api"
	"babayaga/pkg/zone"

	"github.com/invopop/jsonschema"
)

type document struct {
	file        string
	title       string
	description string
	value       any
}

var documents = []document{
	{
		file:        "zone_descriptor.schema.json",
		title:       "Zone Descriptor",
		description: "Input of GENERATE_ZONE; with a seed it rebuilds the same layout.",
		value:       new(zone.Descriptor),
	},
	{
		file:        "snapshot.schema.json",
		title:       "Simulation Snapshot",
		description: "Actors, inventories and zone reference persisted by SNAPSHOT.",
		value:       new(storage.Snapshot),
	},
	{
		file:        "client_command.schema.json",
		title:       "Client Command",
		description: "Root object of every observer and bot message.",
		value:       new(api.ClientCommand),
	},
}

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas to")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "-out is required")
		os.Exit(1)
	}

	for _, d := range documents {
		if err := writeSchema(filepath.Join(outDir, d.file), buildSchema(d)); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", d.file, err)
			os.Exit(1)
		}
	}
}

var rawMessage = reflect.TypeOf(json.RawMessage{})

func buildSchema(d document) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		// Payloads depend on the action; any JSON value is accepted here.
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == rawMessage {
				return &jsonschema.Schema{}
			}
			return nil
		},
	}
	schema := reflector.Reflect(d.value)
	schema.Title = d.title
	schema.Description = d.description
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
