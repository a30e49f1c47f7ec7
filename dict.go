package main

import (
	"fmt"
	"strconv"
)

type cellKind uint8

const (
	primCell cellKind = iota
	wordCell
	litCell
)

// cell is one entry in a word's code list: a primitive to call, another
// word to run, or an integer to push.
type cell struct {
	kind cellKind
	prim primitive
	word wordRef
	lit  int
}

func primitiveCell(prim primitive) cell { return cell{kind: primCell, prim: prim} }
func wordRefCell(ref wordRef) cell       { return cell{kind: wordCell, word: ref} }
func literalCell(n int) cell             { return cell{kind: litCell, lit: n} }

// word is a named code list. Words are sealed once their definition ends,
// after which their code may not change.
type word struct {
	name      uint // symbol id
	immediate bool
	sealed    bool
	code      []cell
}

// wordRef is a stable handle to a dictionary word: its index plus one, so
// that the zero value means "no word". Handles stay valid as the dictionary
// grows, unlike pointers into its backing array.
type wordRef uint

// dictionary is an append-only list of words. Names need not be unique:
// lookup prefers the most recent definition.
type dictionary struct {
	symbols
	words  []word
	active wordRef
}

func (dict *dictionary) word(ref wordRef) *word {
	if i := int(ref) - 1; i >= 0 && i < len(dict.words) {
		return &dict.words[i]
	}
	return nil
}

func (dict *dictionary) nameOf(ref wordRef) string {
	if w := dict.word(ref); w != nil {
		return dict.string(w.name)
	}
	return ""
}

// define appends a new empty word and makes it the active definition.
func (dict *dictionary) define(name string) wordRef {
	dict.words = append(dict.words, word{name: dict.symbolicate(name)})
	dict.active = wordRef(len(dict.words))
	return dict.active
}

// lookup finds the newest word named name. When excludingActive is set, the
// search starts below any active definition, so that a word under
// construction never finds itself, and instead finds what it shadows.
func (dict *dictionary) lookup(name string, excludingActive bool) wordRef {
	sym := dict.symbol(name)
	if sym == 0 {
		return 0
	}
	i := len(dict.words) - 1
	if excludingActive && dict.active != 0 {
		i = int(dict.active) - 2
	}
	for ; i >= 0; i-- {
		if dict.words[i].name == sym {
			return wordRef(i + 1)
		}
	}
	return 0
}

func (dict *dictionary) markImmediate(ref wordRef) {
	if w := dict.word(ref); w != nil {
		w.immediate = true
	}
}

// compile appends a cell to the code of an unsealed word.
func (dict *dictionary) compile(ref wordRef, c cell) error {
	w := dict.word(ref)
	if w == nil {
		return modeErrorf("no word #%d to compile into", uint(ref))
	}
	if w.sealed {
		return modeErrorf("word %q is already complete", dict.string(w.name))
	}
	w.code = append(w.code, c)
	return nil
}

// finish seals any active definition and clears it.
func (dict *dictionary) finish() {
	if w := dict.word(dict.active); w != nil {
		w.sealed = true
	}
	dict.active = 0
}

func (dict *dictionary) formatCell(c cell) string {
	switch c.kind {
	case primCell:
		return c.prim.String()
	case wordCell:
		if name := dict.nameOf(c.word); name != "" {
			return name
		}
		return fmt.Sprintf("#%d", uint(c.word))
	case litCell:
		return strconv.Itoa(c.lit)
	default:
		return fmt.Sprintf("<invalid cell kind %d>", c.kind)
	}
}

// symbols interns word names as 1-based ids.
type symbols struct {
	strings []string
	symbols map[string]uint
}

func (sym symbols) string(id uint) string {
	if i := int(id) - 1; i >= 0 && i < len(sym.strings) {
		return sym.strings[i]
	}
	return ""
}

func (sym symbols) symbol(s string) uint {
	return sym.symbols[s]
}

func (sym *symbols) symbolicate(s string) (id uint) {
	id, defined := sym.symbols[s]
	if !defined {
		if sym.symbols == nil {
			sym.symbols = make(map[string]uint)
		}
		id = uint(len(sym.strings)) + 1
		sym.strings = append(sym.strings, s)
		sym.symbols[s] = id
	}
	return id
}
