// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// now is replaced in tests.
var now = time.Now

// pot renders the collected messages as a gettext template, sorted by
// context, msgid and plural, with de-duplicated source references.
func (c *catalog) pot(version string) string {
	var b strings.Builder

	writeHeader(&b, version)

	msgs := slices.SortedFunc(maps.Keys(c.refs), func(a, b message) int {
		return cmp.Or(
			cmp.Compare(a.ctx, b.ctx),
			cmp.Compare(a.id, b.id),
			cmp.Compare(a.plural, b.plural),
		)
	})

	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}

		writeEntry(&b, msg, c.refs[msg])
	}

	return b.String()
}

func writeHeader(b *strings.Builder, version string) {
	b.WriteString("msgid \"\"\nmsgstr \"\"\n")
	fmt.Fprintf(b, "\"Project-Id-Version: caretdocs %s\\n\"\n", version)
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", now().UTC().Format("2006-01-02 15:04+0000"))
	b.WriteString(`"Language: en\n"` + "\n")
	b.WriteString(`"MIME-Version: 1.0\n"` + "\n")
	b.WriteString(`"Content-Type: text/plain; charset=UTF-8\n"` + "\n")
	b.WriteString(`"Content-Transfer-Encoding: 8bit\n"` + "\n")
	b.WriteString(`"Plural-Forms: nplurals=2; plural=(n != 1);\n"` + "\n")
	b.WriteString("\n")
}

func writeEntry(b *strings.Builder, msg message, refs []ref) {
	refs = slices.Clone(refs)
	slices.SortFunc(refs, func(a, b ref) int {
		return cmp.Or(cmp.Compare(a.file, b.file), cmp.Compare(a.line, b.line))
	})
	refs = slices.Compact(refs)

	b.WriteString("#:")

	for _, r := range refs {
		fmt.Fprintf(b, " %s:%d", r.file, r.line)
	}

	b.WriteString("\n")

	if msg.ctx != "" {
		fmt.Fprintf(b, "msgctxt %q\n", msg.ctx)
	}

	fmt.Fprintf(b, "msgid %q\n", msg.id)

	if msg.plural != "" {
		fmt.Fprintf(b, "msgid_plural %q\n", msg.plural)
		b.WriteString("msgstr[0] \"\"\nmsgstr[1] \"\"\n")

		return
	}

	b.WriteString("msgstr \"\"\n")
}
