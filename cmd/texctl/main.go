// Command texctl runs the document pipeline offline from a content JSON file:
//
//	texctl fill --kind resume content.json > resume.tex
//	texctl translate --title "Cover Letter" letter.tex > letter.html
//	texctl render --kind resume --verify resume.html -o resume.pdf
//	texctl build --kind resume content.json --out-dir ./out
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
