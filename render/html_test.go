package render_test

import (
	"strings"
	"testing"

	"cssfrag/css"
	"cssfrag/render"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "selector and property",
			content: "a:hover { color: blue; }",
			want: `<span class="typ">a:hover</span><span class="pln"> </span><span class="pun">{</span><span class="pln"> </span>` +
				`<span class="kwd">color</span><span class="pun">:</span><span class="pln"> </span><span class="str">blue</span>` +
				`<span class="pun">;</span><span class="pln"> </span><span class="pun">}</span>`,
		},
		{
			name:    "comment between property and colon",
			content: "a{b /*x*/ :c}",
			want: `<span class="typ">a</span><span class="pun">{</span><span class="kwd">b</span><span class="pln"> </span>` +
				`<span class="com">/*x*/</span><span class="pln"> </span><span class="pun">:</span><span class="str">c</span><span class="pun">}</span>`,
		},
		{
			name:    "whitespace",
			content: "a   {\r\n}",
			want:    `<span class="typ">a</span><span class="pln">&nbsp;&nbsp; </span><span class="pun">{</span><span class="pln"><br/></span><span class="pun">}</span>`,
		},
		{
			name:    "escaping",
			content: `a{content:"<b>&"}`,
			want: `<span class="typ">a</span><span class="pun">{</span><span class="kwd">content</span><span class="pun">:</span>` +
				`<span class="str">&#34;&lt;b&gt;&amp;&#34;</span><span class="pun">}</span>`,
		},
		{
			name:    "trailing selector",
			content: "a ",
			want:    `<span class="typ">a</span><span class="pln"> </span>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render.HTML(css.ParseCSS(tt.content)); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestPage(t *testing.T) {
	page, err := render.Page("", "", "styles/site.css", "<b>body</b>")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	s := string(page)
	for _, want := range []string{"<title>styles/site.css</title>", "<b>body</b>", "site.css &middot;"} {
		if !strings.Contains(s, want) {
			t.Errorf("page does not contain %q", want)
		}
	}

	page, err = render.Page("{{ .Title | upper }}|{{ .Body }}", "x", "", "y")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if string(page) != "X|y" {
		t.Errorf("got %q", page)
	}

	if _, err := render.Page("{{ .Missing", "", "", ""); err == nil {
		t.Error("expected template error")
	}
}
