package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// vmDumper writes a human readable description of a VM's state: its mode,
// stack, and every dictionary word as a definition.
type vmDumper struct {
	vm  *VM
	out io.Writer

	// skip the primitive wrapper words
	userOnly bool
}

func (dump vmDumper) dump() {
	vm := dump.vm
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  mode: %v\n", vm.mode)
	if vm.dict.active != 0 {
		fmt.Fprintf(dump.out, "  active: %v\n", dump.wordName(vm.dict.active))
	}
	fmt.Fprintf(dump.out, "  depth: %v\n", vm.depth)
	dump.dumpStack()
	dump.dumpDict()
}

func (dump vmDumper) dumpStack() {
	var sb strings.Builder
	for i, v := range dump.vm.stack {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if v.isInt() {
			sb.WriteString(v.String())
		} else {
			sb.WriteString("'" + dump.wordName(v.wordRef()))
		}
	}
	fmt.Fprintf(dump.out, "  stack: [%v]\n", sb.String())
}

func (dump vmDumper) dumpDict() {
	fmt.Fprintf(dump.out, "# Dictionary\n")
	refWidth := len(strconv.Itoa(len(dump.vm.dict.words)))
	var sb strings.Builder
	for i := range dump.vm.dict.words {
		ref := wordRef(i + 1)
		if dump.userOnly && int(ref) <= int(primMax) {
			continue
		}
		sb.Reset()
		fmt.Fprintf(&sb, "  #%-*d ", refWidth, uint(ref))
		dump.formatWord(&sb, ref)
		sb.WriteByte('\n')
		io.WriteString(dump.out, sb.String())
	}
}

// formatWord writes a word as source-like text: ": name [immediate] cells ;",
// leaving off the ";" of a word still being defined.
func (dump vmDumper) formatWord(sb *strings.Builder, ref wordRef) {
	dict := &dump.vm.dict
	w := dict.word(ref)
	sb.WriteString(": ")
	sb.WriteString(dict.string(w.name))
	if w.immediate {
		sb.WriteString(" immediate")
	}
	for _, c := range w.code {
		sb.WriteByte(' ')
		if c.kind == wordCell {
			sb.WriteString(dump.wordName(c.word))
		} else {
			sb.WriteString(dict.formatCell(c))
		}
	}
	if w.sealed {
		sb.WriteString(" ;")
	}
}

// wordName names ref, qualified by its handle when a newer word shadows it.
func (dump vmDumper) wordName(ref wordRef) string {
	name := dump.vm.dict.nameOf(ref)
	if name == "" {
		return fmt.Sprintf("#%d", uint(ref))
	}
	if dump.vm.dict.lookup(name, false) != ref {
		return fmt.Sprintf("%v#%d", name, uint(ref))
	}
	return name
}
