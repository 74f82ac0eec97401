package complete

import (
	"testing"

	"src.yle.sh/pkg/parse"
	"src.yle.sh/pkg/tt"
)

func contextOf(s string) Context { return ContextAt(bufferOf(s)) }

func TestContextAt(t *testing.T) {
	tt.Test(t, tt.Fn("ContextAt", contextOf).ArgsFmt("(%q)"), tt.Table{
		tt.Args("|").Rets(Context{Quote: parse.QuoteNormal}),
		tt.Args("ec|").Rets(Context{
			SourceWordIndex: 0, Quote: parse.QuoteNormal, Word: "ec", ExpandedLen: 2}),
		tt.Args("echo foo|").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Word: "foo", ExpandedLen: 3,
			Args: []string{"echo"}}),
		tt.Args("echo |").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Args: []string{"echo"}}),
		// Only the part before the cursor counts.
		tt.Args("echo fo|o bar").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Word: "fo", ExpandedLen: 2,
			Args: []string{"echo"}}),
		tt.Args("echo 'a b|").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteSingle, Word: "a b", ExpandedLen: 3,
			Args: []string{"echo"}}),
		tt.Args(`echo x"a\"b|`).Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteDouble, Word: `xa"b`, ExpandedLen: 4,
			Args: []string{"echo"}}),
		tt.Args(`echo a\ b|`).Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Word: "a b", ExpandedLen: 3,
			Args: []string{"echo"}}),
		tt.Args(`ls a\|`).Rets(Context{
			SourceWordIndex: 3, Quote: parse.QuoteNormal, Word: "a", ExpandedLen: 1,
			PendingBackslash: true, Args: []string{"ls"}}),
		tt.Args(`echo "a\|`).Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteDouble, Word: "a", ExpandedLen: 1,
			PendingBackslash: true, Args: []string{"echo"}}),
		tt.Args(`cp 'a b' "c;d" e|`).Rets(Context{
			SourceWordIndex: 15, Quote: parse.QuoteNormal, Word: "e", ExpandedLen: 1,
			Args: []string{"cp", "a b", "c;d"}}),
		tt.Args("ls | gr|").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Word: "gr", ExpandedLen: 2}),
		tt.Args("a;b&&c|").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Word: "c", ExpandedLen: 1}),
		tt.Args("cat <fi|").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Word: "fi", ExpandedLen: 2,
			Args: []string{"cat"}}),
		tt.Args("echo 世界|").Rets(Context{
			SourceWordIndex: 5, Quote: parse.QuoteNormal, Word: "世界", ExpandedLen: 2,
			Args: []string{"echo"}}),
	})
}
