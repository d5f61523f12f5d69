// Package bookfmt converts book chapters written in a lightweight markup
// to HTML pages or to XML for a print layout importer.
//
// # Quick Start
//
// Create a converter and convert each chapter:
//
//	conv, err := bookfmt.NewConverter(bookfmt.WithCodeDir("code/cpp", ".h"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, bookfmt.Input{
//	    Name:   "game-loop",
//	    Source: "^title Game Loop\n^section Sequencing Patterns\n\n## Intent\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Println(w)
//	}
//	os.WriteFile("html/game-loop.html", result.Output, 0644)
//
// # Chapter Markup
//
// Chapters are Markdown with line directives:
//
//	^title Game Loop          chapter title, looked up in the chapter list
//	^section Sequencing Patterns
//	^code update              splice region "update" of code/cpp/game-loop.h
//	^outline                  flag an unfinished chapter
//
// Code regions are delimited in the source file by lines holding only the
// marker and the region name ("//^update"). Inside a region "//^omit"
// toggles hiding for every region and "//^omit update" for this one only.
//
// Level-two headings get self-links and are listed in the page navigation.
//
// # Conversion Pipeline
//
//  1. Directive interpretation and code extraction
//  2. Markdown to HTML via Goldmark (GFM, definition lists, footnotes,
//     typographic quotes, chroma highlighting with CSS classes)
//  3. Page template substitution, with prev/next links from the chapter list
//  4. XML export cleanup (XML format only): chapter links become
//     citations and highlighting markup is reduced
//
// # Authoring Problems
//
// Unknown directives, titles missing from the chapter list, empty code
// regions and over-long code lines do not fail a conversion. They are
// returned as Result.Warnings and the chapter is still produced.
//
// # Batch Progress
//
// Stats folds Results into book-wide totals and estimates completion:
//
//	var stats bookfmt.Stats
//	stats.Add(result)
//	if est, ok := stats.Completion(); ok {
//	    fmt.Printf("%d/~%d words (%d%%)\n", est.Words, est.Estimated, est.Percent)
//	}
package bookfmt
