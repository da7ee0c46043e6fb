// obastorectl loads a directory snapshot from an LDIF file into an
// in-memory partition and runs one operation against it: print the tree,
// look up an entry, search an indexed attribute, or dump index statistics.
// It exists for poking at the storage engine from a shell; the engine
// itself is consumed as a library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/obalog"
	"github.com/oba-ldap/obastore/internal/partition"
	"github.com/oba-ldap/obastore/internal/schema"
)

var (
	flagLDIF    string
	flagSuffix  string
	flagSchema  string
	flagIndices []string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "obastorectl",
	Short: "Inspect an in-memory directory partition built from an LDIF file",
	Long: `obastorectl builds an in-memory DIT partition from an LDIF file and runs
a single operation against it.

Entries must appear in parent-before-child order, with the suffix entry
first. entryUUID and entryCSN are generated for entries that lack them.

Examples:
  obastorectl tree   --ldif dit.ldif --suffix dc=example,dc=com
  obastorectl lookup --ldif dit.ldif --suffix dc=example,dc=com cn=alice,dc=example,dc=com
  obastorectl search --ldif dit.ldif --suffix dc=example,dc=com --index mail mail alice@example.com
  obastorectl stats  --ldif dit.ldif --suffix dc=example,dc=com`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLDIF, "ldif", "", "LDIF file holding the entries to load (required)")
	rootCmd.PersistentFlags().StringVar(&flagSuffix, "suffix", "", "partition naming context, e.g. dc=example,dc=com (required)")
	rootCmd.PersistentFlags().StringVar(&flagSchema, "schema", "", "optional subschema LDIF; defaults to the built-in schema")
	rootCmd.PersistentFlags().StringSliceVar(&flagIndices, "index", nil, "attribute to build a user index on (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log engine activity to stderr")

	rootCmd.AddCommand(treeCmd, lookupCmd, searchCmd, statsCmd)
}

// buildPartition initializes a partition per the global flags and loads
// every entry from the LDIF file into it.
func buildPartition() (*partition.Partition, error) {
	if flagLDIF == "" || flagSuffix == "" {
		return nil, fmt.Errorf("--ldif and --suffix are required")
	}

	s := schema.LoadDefaultSchema()
	if flagSchema != "" {
		f, err := os.Open(flagSchema)
		if err != nil {
			return nil, fmt.Errorf("open schema: %w", err)
		}
		defer f.Close()
		if s, err = schema.LoadSchemaFromLDIF(f); err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
	}

	suffix, err := dn.Parse(flagSuffix)
	if err != nil {
		return nil, fmt.Errorf("parse suffix: %w", err)
	}

	log := obalog.NewNop()
	if flagVerbose {
		log = obalog.New(obalog.LevelDebug, obalog.FormatText, os.Stderr)
	}

	p := partition.New(log)
	if err := p.SetUserIndices(flagIndices); err != nil {
		return nil, err
	}
	if err := p.Init(s, suffix, "obastorectl"); err != nil {
		return nil, err
	}

	entries, err := readLDIF(flagLDIF)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		partition.StampOperational(e, 1)
		if _, err := p.Add(e); err != nil {
			return nil, fmt.Errorf("add %s: %w", e.UserDN.String(), err)
		}
	}
	return p, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
