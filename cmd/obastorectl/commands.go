package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/partition"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the DIT as an indented tree with entry ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPartition()
		if err != nil {
			return err
		}
		suffix := p.SuffixDN()
		rootID, ok := p.GetEntryID(suffix)
		if !ok {
			return fmt.Errorf("suffix %s not present in the LDIF", suffix.String())
		}
		printSubtree(cmd, p, rootID, 0)
		return nil
	},
}

func printSubtree(cmd *cobra.Command, p *partition.Partition, id int64, depth int) {
	updn, err := p.GetEntryUpdn(id)
	if err != nil {
		return
	}
	label := updn.String()
	if depth > 0 {
		if rdn, ok := updn.Leaf(); ok {
			label = rdn.String()
		}
	}
	cmd.Printf("%s%s  [id=%d]\n", strings.Repeat("  ", depth), label, id)

	c := p.List(id)
	defer c.Close()
	for {
		ok, err := c.Next()
		if err != nil || !ok {
			break
		}
		child, err := c.Value()
		if err != nil {
			break
		}
		printSubtree(cmd, p, child, depth+1)
	}
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <dn>",
	Short: "Resolve a DN and print the entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPartition()
		if err != nil {
			return err
		}
		d, err := dn.Parse(args[0])
		if err != nil {
			return err
		}
		e, err := p.LookupDN(d)
		if err != nil {
			return err
		}
		cmd.Printf("dn: %s\n", e.UserDN.String())
		cmd.Printf("# id=%d ndn=%s\n", e.ID, e.NormDN.String())
		names := e.AttributeNames()
		sort.Strings(names)
		for _, name := range names {
			for _, v := range e.GetAttribute(name) {
				cmd.Printf("%s: %s\n", name, v)
			}
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <attribute> <value>",
	Short: "Find entries by an indexed attribute value",
	Long: `Find entries whose attribute equals value, using the attribute's user
index. The attribute must have been indexed with --index.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPartition()
		if err != nil {
			return err
		}
		idx, err := p.GetUserIndex(args[0])
		if err != nil {
			return err
		}
		c := idx.ForwardValueCursor(args[1])
		defer c.Close()
		found := 0
		for {
			ok, err := c.Next()
			if err != nil || !ok {
				break
			}
			id, err := c.Value()
			if err != nil {
				break
			}
			updn, err := p.GetEntryUpdn(id)
			if err != nil {
				continue
			}
			cmd.Printf("%s  [id=%d]\n", updn.String(), id)
			found++
		}
		cmd.Printf("# %d entries matched\n", found)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print entry and index tuple counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPartition()
		if err != nil {
			return err
		}
		cmd.Printf("entries:      %d\n", p.Count())
		cmd.Printf("ndn:          %d\n", p.GetNdnIndex().Count())
		cmd.Printf("updn:         %d\n", p.GetUpdnIndex().Count())
		cmd.Printf("objectclass:  %d\n", p.GetObjectClassIndex().Count())
		cmd.Printf("presence:     %d\n", p.GetPresenceIndex().Count())
		cmd.Printf("onelevel:     %d\n", p.GetOneLevelIndex().Count())
		cmd.Printf("sublevel:     %d\n", p.GetSubLevelIndex().Count())
		cmd.Printf("alias:        %d\n", p.GetAliasIndex().Count())
		cmd.Printf("onealias:     %d\n", p.GetOneAliasIndex().Count())
		cmd.Printf("subalias:     %d\n", p.GetSubAliasIndex().Count())
		for _, attr := range p.UserIndices() {
			idx, err := p.GetUserIndex(attr)
			if err != nil {
				continue
			}
			cmd.Printf("user[%s]: %d\n", attr, idx.Count())
		}
		return nil
	},
}
