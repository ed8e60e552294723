package forth

import (
	"fmt"
	"sort"
	"strings"
)

// dictionary is an append-only store of word bodies, indexed by id, along
// with a replaceable index from names to ids.
//
// Ids are 1-based; body id is always bodies[id-1]. Once assigned, an id
// resolves to the same body for the life of the dictionary: redefinition only
// moves the old name aside (see shadow) and appends a new body.
type dictionary struct {
	bodies [][]Token
	names  []string        // current binding name of each id
	ids    map[string]uint // current name -> id bindings
}

// Shadow names begin with a space, which can never occur within a unit of
// whitespace delimited input.
const shadowPrefix = " "

func shadowName(name string, id uint) string {
	return fmt.Sprintf("%s%s#%d", shadowPrefix, name, id)
}

func isShadowName(name string) bool { return strings.HasPrefix(name, shadowPrefix) }

func (dict *dictionary) isKnown(name string) bool {
	_, known := dict.ids[name]
	return known
}

func (dict *dictionary) lookupBody(name string) ([]Token, bool) {
	id, known := dict.ids[name]
	if !known {
		return nil, false
	}
	return dict.lookupBodyByID(id)
}

func (dict *dictionary) lookupBodyByID(id uint) ([]Token, bool) {
	if i := int(id) - 1; i >= 0 && i < len(dict.bodies) {
		return dict.bodies[i], true
	}
	return nil, false
}

// reference returns a token that will run the body currently bound to name,
// even after name is later rebound.
func (dict *dictionary) reference(name string) (Token, bool) {
	id, known := dict.ids[name]
	if !known {
		return Token{}, false
	}
	return refToken(id), true
}

// name returns the name bound to id, which may be a shadow name.
func (dict *dictionary) name(id uint) string {
	if i := int(id) - 1; i >= 0 && i < len(dict.names) {
		return dict.names[i]
	}
	return ""
}

func (dict *dictionary) shadow(name string) error {
	id, known := dict.ids[name]
	if !known {
		return ErrUnknownWord
	}
	delete(dict.ids, name)
	shadow := shadowName(name, id)
	dict.ids[shadow] = id
	dict.names[id-1] = shadow
	return nil
}

// define binds name to a new body; any prior binding of name is shadowed so
// that references already compiled against it keep working.
func (dict *dictionary) define(name string, body []Token) (uint, error) {
	if _, err := parseInt(name); err == nil {
		return 0, ErrInvalidWord
	}
	if dict.isKnown(name) {
		if err := dict.shadow(name); err != nil {
			return 0, err
		}
	}
	if dict.ids == nil {
		dict.ids = make(map[string]uint)
	}
	id := uint(len(dict.ids)) + 1
	dict.ids[name] = id
	dict.names = append(dict.names, name)
	dict.bodies = append(dict.bodies, body)
	return id, nil
}

// words returns all currently reachable names in sorted order.
func (dict *dictionary) words() []string {
	words := make([]string, 0, len(dict.ids))
	for name := range dict.ids {
		if !isShadowName(name) {
			words = append(words, name)
		}
	}
	sort.Strings(words)
	return words
}

func (dict *dictionary) size() int { return len(dict.bodies) }

func (dict dictionary) clone() dictionary {
	ids := make(map[string]uint, len(dict.ids))
	for name, id := range dict.ids {
		ids[name] = id
	}
	return dictionary{
		bodies: append([][]Token(nil), dict.bodies...),
		names:  append([]string(nil), dict.names...),
		ids:    ids,
	}
}
