package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/oba-ldap/obastore/internal/dn"
	"github.com/oba-ldap/obastore/internal/entry"
)

// readLDIF reads entry records from an LDIF file: blank-line separated
// blocks of "attr: value" lines, each block starting with a dn: line.
// Continuation lines (leading space) and base64 values ("attr:: b64") are
// handled; "-" separators and changetype records are not; this reader
// loads snapshots, it does not replay change logs.
func readLDIF(path string) ([]*entry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ldif: %w", err)
	}
	defer f.Close()

	var entries []*entry.Entry
	var current *entry.Entry
	lineNo := 0

	flush := func() {
		if current != nil {
			entries = append(entries, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var logical string
	emit := func(line string) error {
		if line == "" || strings.HasPrefix(line, "#") {
			return nil
		}
		attr, value, err := splitLDIFLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if strings.EqualFold(attr, "dn") {
			flush()
			d, err := dn.Parse(value)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = entry.New(0, dn.DN{}, d)
			return nil
		}
		if current == nil {
			return fmt.Errorf("line %d: attribute before any dn: line", lineNo)
		}
		current.AddAttributeValue(attr, value)
		return nil
	}

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		switch {
		case strings.HasPrefix(raw, " "):
			logical += raw[1:]
		case strings.TrimSpace(raw) == "":
			if err := emit(logical); err != nil {
				return nil, err
			}
			logical = ""
			flush()
		default:
			if err := emit(logical); err != nil {
				return nil, err
			}
			logical = raw
		}
	}
	if err := emit(logical); err != nil {
		return nil, err
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ldif: %w", err)
	}
	return entries, nil
}

func splitLDIFLine(line string) (attr, value string, err error) {
	colon := strings.Index(line, ":")
	if colon <= 0 {
		return "", "", fmt.Errorf("malformed LDIF line %q", line)
	}
	attr = strings.TrimSpace(line[:colon])
	rest := line[colon+1:]
	if strings.HasPrefix(rest, ":") {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(rest[1:]))
		if err != nil {
			return "", "", fmt.Errorf("bad base64 value for %s: %w", attr, err)
		}
		return attr, string(decoded), nil
	}
	return attr, strings.TrimSpace(rest), nil
}
