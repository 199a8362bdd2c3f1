// cmd/tools/catalog-dump/main.go
//
// Dumps the action catalog as JSON so frontends and API docs can be generated
// from the same source of truth the router dispatches on.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"leadflow/pkg/catalog"
)

func main() {
	out := flag.String("out", "", "Write to this file instead of stdout")
	withSchemas := flag.Bool("schemas", false, "Include response schemas in the dump")
	flag.Parse()

	names := catalog.Actions()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	entries := make([]catalog.Entry, 0, len(names))
	for _, name := range names {
		entry, _ := catalog.Lookup(string(name))
		if !*withSchemas {
			entry.ResponseSchema = ""
		}
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling catalog: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
		fmt.Printf("Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d catalog entries to %s\n", len(entries), *out)
}
