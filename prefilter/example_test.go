package prefilter_test

import (
	"fmt"

	"github.com/clintolsen/pyre/literal"
	"github.com/clintolsen/pyre/prefilter"
	"github.com/clintolsen/pyre/syntax"
)

// ExampleBuilder demonstrates building a prefilter from a compiled pattern.
func ExampleBuilder() {
	term, _, _ := syntax.Parse("hello")

	extractor := literal.New(literal.DefaultConfig())
	prefixes := extractor.ExtractPrefixes(term)

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	if pf != nil {
		haystack := []byte("foo hello world")
		pos := pf.Find(haystack, 0)
		fmt.Printf("Found candidate at position %d\n", pos)
	}

	// Output:
	// Found candidate at position 4
}

// ExampleBuilder_singleByte demonstrates prefilter selection for single-byte
// character classes.
func ExampleBuilder_singleByte() {
	term, _, _ := syntax.Parse("[a].*")

	extractor := literal.New(literal.DefaultConfig())
	prefixes := extractor.ExtractPrefixes(term)

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	haystack := []byte("xxxayyy")
	pos := pf.Find(haystack, 0)
	fmt.Printf("Found 'a' at position %d\n", pos)
	fmt.Printf("Heap usage: %d bytes\n", pf.HeapBytes())

	// Output:
	// Found 'a' at position 3
	// Heap usage: 0 bytes
}

// ExampleBuilder_substring demonstrates prefilter selection for substring
// literals.
func ExampleBuilder_substring() {
	term, _, _ := syntax.Parse("pattern.*")

	extractor := literal.New(literal.DefaultConfig())
	prefixes := extractor.ExtractPrefixes(term)

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	haystack := []byte("test pattern matching")
	pos := pf.Find(haystack, 0)
	fmt.Printf("Found 'pattern' at position %d\n", pos)
	fmt.Printf("Heap usage: %d bytes\n", pf.HeapBytes())

	// Output:
	// Found 'pattern' at position 5
	// Heap usage: 7 bytes
}

// ExampleBuilder_noPrefilter demonstrates a pattern with no extractable
// prefix, which leaves matching entirely to the DFA.
func ExampleBuilder_noPrefilter() {
	term, _, _ := syntax.Parse(".*")

	extractor := literal.New(literal.DefaultConfig())
	prefixes := extractor.ExtractPrefixes(term)

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	if pf == nil {
		fmt.Println("No prefilter available, must use full regex engine")
	}

	// Output:
	// No prefilter available, must use full regex engine
}

// ExampleBuilder_digitClass demonstrates the DigitPrefilter fallback: a
// shorthand class like \d expands to all ten ASCII digit literals, too
// many for Teddy, so the builder falls back to a dedicated digit scan.
func ExampleBuilder_digitClass() {
	term, _, _ := syntax.Parse(`\d+`)

	extractor := literal.New(literal.DefaultConfig())
	prefixes := extractor.ExtractPrefixes(term)

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	haystack := []byte("room 42")
	pos := pf.Find(haystack, 0)
	fmt.Printf("Found digit at position %d\n", pos)

	// Output:
	// Found digit at position 5
}

// ExamplePrefilter_Find demonstrates scanning for every occurrence of a
// literal prefix.
func ExamplePrefilter_Find() {
	term, _, _ := syntax.Parse("test")

	extractor := literal.New(literal.DefaultConfig())
	prefixes := extractor.ExtractPrefixes(term)

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	haystack := []byte("first test, second test, third test")

	start := 0
	count := 0
	for {
		pos := pf.Find(haystack, start)
		if pos == -1 {
			break
		}
		count++
		fmt.Printf("Match %d at position %d\n", count, pos)
		start = pos + 1
	}

	// Output:
	// Match 1 at position 6
	// Match 2 at position 19
	// Match 3 at position 31
}

// ExamplePrefilter_IsComplete demonstrates checking whether a prefilter hit
// still needs full-regex verification.
func ExamplePrefilter_IsComplete() {
	exact, _, _ := syntax.Parse("exact")
	extractorComplete := literal.New(literal.DefaultConfig())
	prefixesComplete := extractorComplete.ExtractPrefixes(exact)
	pfComplete := prefilter.NewBuilder(prefixesComplete, nil).Build()

	prefixed, _, _ := syntax.Parse("prefix.*")
	extractorIncomplete := literal.New(literal.DefaultConfig())
	prefixesIncomplete := extractorIncomplete.ExtractPrefixes(prefixed)
	pfIncomplete := prefilter.NewBuilder(prefixesIncomplete, nil).Build()

	fmt.Printf("Complete pattern needs verification: %v\n", !pfComplete.IsComplete())
	fmt.Printf("Incomplete pattern needs verification: %v\n", !pfIncomplete.IsComplete())

	// Output:
	// Complete pattern needs verification: false
	// Incomplete pattern needs verification: true
}
