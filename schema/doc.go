// Package schema declares tags in YAML documents.
//
// A document maps tag names to their arguments and blocks:
//
//	tags:
//	  card:
//	    arguments:
//	      - {name: title, kind: positional, type: string}
//	      - {name: size, kind: keyword, choices: [sm, md, lg], default: "'md'", required: false}
//	      - {name: dismissible, kind: flag}
//	    blocks:
//	      - {terminator: endcard, alias: body}
//	      - footer
//
// Kind defaults to positional and type to any. A block given as a plain
// string is its own terminator and alias. String defaults are tokens, so a
// default meant as text is quoted inside the YAML string.
package schema
