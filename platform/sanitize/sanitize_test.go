package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := map[string]string{
		"plain":                                           "plain",
		"  <b>bold</b> text ":                             "bold text",
		"<script>alert(1)</script>stable":                 "stable",
		"خيل &amp; اسطبل":                                 "خيل & اسطبل",
		"&lt;script&gt;alert(1)&lt;/script&gt;Stable":     "Stable",
		"&amp;lt;b&amp;gt;Arabian&amp;lt;/b&amp;gt; mare": "Arabian mare",
		"a &lt; b": "a < b",
	}
	for input, want := range cases {
		if got := Text(input); got != want {
			t.Errorf("Text(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTextPtrNil(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Fatal("expected nil")
	}
}
