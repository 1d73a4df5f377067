// Package resmeta reads and writes the resource meta format, a small
// line-oriented text format describing an extracted resource.
//
// A file is a list of objects separated by blank lines. An object starts
// with "<identifier> <version>" and continues with list entries
// ("- <value>", order significant) and map entries (": <key> = <value>",
// order not significant; a repeated key overwrites the earlier value with a
// warning). A '#' starts a comment that runs to
// the end of the line. Leading and trailing whitespace around identifiers,
// keys and values is ignored. The first object must carry the
// HeaderIdentifier; its version governs the file-level schema.
package resmeta

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// HeaderIdentifier names the mandatory first object of every file.
const HeaderIdentifier = "RESOURCE_META_HEADER"

// Format versions.
const (
	// HeaderVersion is the version the header object itself is parsed as.
	HeaderVersion = 1
	// CurrentVersion is the version written for new files.
	CurrentVersion = 1
)

// Markers of the line format.
const (
	commentMarker      = '#'
	listItemMarker     = '-'
	mapItemMarker      = ':'
	mapSeparatorMarker = '='
)

// Object is one parsed object: its identifier line plus the entries in
// file order.
type Object struct {
	Identifier string
	Version    int
	List       []string
	Map        map[string]string
}

// MapEntry returns the value of a map key.
func (o *Object) MapEntry(key string) (string, error) {
	v, ok := o.Map[key]
	if !ok {
		return "", errors.Errorf("%s object has no entry '%s'", o.Identifier, key)
	}
	return v, nil
}

// ListEntry returns the list value at the given position.
func (o *Object) ListEntry(i int) (string, error) {
	if i < 0 || i >= len(o.List) {
		return "", errors.Errorf("%s object has no list entry %d", o.Identifier, i)
	}
	return o.List[i], nil
}

// File is a parsed meta file: the header object followed by the content
// objects in file order.
type File struct {
	Header  Object
	Objects []Object
}

// Parse reads a meta file from its text content.
func Parse(content string) (*File, error) {
	objects, err := parseObjects(content)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, errors.New("file contains no objects")
	}
	if objects[0].Identifier != HeaderIdentifier {
		return nil, errors.Errorf("file does not start with a %s object", HeaderIdentifier)
	}
	return &File{Header: objects[0], Objects: objects[1:]}, nil
}

func parseObjects(content string) ([]Object, error) {
	var objects []Object
	var current *Object

	for lineNumber, raw := range strings.Split(content, "\n") {
		line := raw
		if i := strings.IndexByte(line, commentMarker); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			// a blank line ends the current object
			if current != nil {
				objects = append(objects, *current)
				current = nil
			}
			continue
		}

		if current == nil {
			obj, err := parseIdentifierLine(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber+1)
			}
			current = &obj
			continue
		}

		switch line[0] {
		case listItemMarker:
			current.List = append(current.List, strings.TrimSpace(line[1:]))
		case mapItemMarker:
			key, value, found := strings.Cut(line[1:], string(mapSeparatorMarker))
			if !found {
				return nil, errors.Errorf("line %d: map entry without '%c' separator", lineNumber+1, mapSeparatorMarker)
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if _, exists := current.Map[key]; exists {
				log.Warn().Str("identifier", current.Identifier).Str("key", key).
					Msg("duplicate map key, overwriting earlier value")
			}
			current.Map[key] = value
		default:
			return nil, errors.Errorf("line %d: entry without a '%c' or '%c' marker", lineNumber+1, listItemMarker, mapItemMarker)
		}
	}
	if current != nil {
		objects = append(objects, *current)
	}
	return objects, nil
}

func parseIdentifierLine(line string) (Object, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Object{}, errors.Errorf("object line %q is not '<identifier> <version>'", line)
	}
	version, err := strconv.Atoi(fields[1])
	if err != nil {
		return Object{}, errors.Wrapf(err, "object %s has a malformed version %q", fields[0], fields[1])
	}
	return Object{
		Identifier: fields[0],
		Version:    version,
		Map:        map[string]string{},
	}, nil
}

// Expect verifies that the object carries the wanted identifier and one of
// the supported versions.
func (o *Object) Expect(identifier string, supportedVersions ...int) error {
	if o.Identifier != identifier {
		return errors.Errorf("expected a %s object, found %s", identifier, o.Identifier)
	}
	for _, v := range supportedVersions {
		if o.Version == v {
			return nil
		}
	}
	return errors.Errorf("%s object has unsupported version %d", o.Identifier, o.Version)
}

// ExpectEntryCounts verifies the number of map and list entries.
func (o *Object) ExpectEntryCounts(mapEntries, listEntries int) error {
	if len(o.Map) != mapEntries || len(o.List) != listEntries {
		return errors.Errorf("%s object has %d map and %d list entries, expected %d and %d",
			o.Identifier, len(o.Map), len(o.List), mapEntries, listEntries)
	}
	return nil
}
