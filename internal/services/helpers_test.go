package services

import (
	"bytes"
	"fmt"
	"strings"
)

// englishStopwords mirrors the NLTK english stopword list.
var englishStopwords = strings.Fields(`
i me my myself we our ours ourselves you you're you've you'll you'd your yours
yourself yourselves he him his himself she she's her hers herself it it's its
itself they them their theirs themselves what which who whom this that that'll
these those am is are was were be been being have has had having do does did
doing a an the and but if or because as until while of at by for with about
against between into through during before after above below to from up down
in out on off over under again further then once here there when where why how
all any both each few more most other some such no nor not only own same so
than too very s t can will just don don't should should've now d ll m o re ve y
ain aren aren't couldn couldn't didn didn't doesn doesn't hadn hadn't hasn
hasn't haven haven't isn isn't ma mightn mightn't mustn mustn't needn needn't
shan shan't shouldn shouldn't wasn wasn't weren weren't won won't wouldn
wouldn't`)

const testNounIndex = `  1 This software and database is being provided to you, the LICENSEE, by
  2 Princeton University under the following license.
analysis n 1 1 @ 1 0 00634276
box n 2 3 @ ~ + 2 0 02883344
bus n 2 2 @ ~ 2 0 02924116
can n 2 3 @ ~ + 2 0 02946921
child n 4 2 @ ~ 4 3 09917593
church n 2 3 @ ~ 2 1 08080386
data n 1 1 @ 1 0 08462320
datum n 1 1 @ 1 0 05816622
developer n 2 2 @ ~ 2 0 09995573
do n 2 2 @ ~ 2 0 07068278
doing n 1 2 @ ~ 1 0 00035833
engineer n 1 2 @ ~ 1 1 09615807
experience n 3 3 @ ~ 3 3 05758059
glass n 7 3 @ ~ 7 3 14881303
learning n 2 2 @ ~ 2 1 05752544
machine n 6 3 @ ~ 6 2 03699975
mouse n 4 2 @ ~ 4 0 02330245
python n 3 2 @ ~ 3 0 01747885
system n 9 3 @ ~ 9 5 04377057
will n 3 2 @ ~ 3 0 05654362
woman n 4 3 @ ~ 4 3 10787470
year n 4 2 @ ~ 4 4 15203791
`

const testNounExceptions = `analyses analysis
children child
data datum
mice mouse
women woman
`

func testLanguageData() *LanguageData {
	index, err := ParseNounIndex(strings.NewReader(testNounIndex))
	if err != nil {
		panic(err)
	}
	exceptions, err := ParseNounExceptions(strings.NewReader(testNounExceptions))
	if err != nil {
		panic(err)
	}
	return NewLanguageData(englishStopwords, NewLemmatizer(index, exceptions))
}

// buildPDF writes a minimal single-font PDF with one text line per page.
func buildPDF(pages ...string) []byte {
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDFString(text))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
