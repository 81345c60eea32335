package browser

import (
	"strings"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
)

func TestFormatDump(t *testing.T) {
	out := FormatDump("https://example.test/web-app/", "FC Web App", []Element{
		{Tag: "button", Classes: "btn-standard buyButton currency-coins", Text: "Buy Now for 1,250", Disabled: true},
		{Tag: "input", Classes: "ut-text-input-control", Value: "Mbappé"},
		{Tag: "button", Text: "Ok", InDialog: true},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"URL: https://example.test/web-app/",
		"Title: FC Web App",
		"Elements: 3",
		`[1] <button class="btn-standard buyButton currency-coins" label="Buy Now for 1,250" disabled>`,
		`[2] <input class="ut-text-input-control" value="Mbappé">`,
		`[3] <button label="Ok" context="dialog">`,
	}, lines)
}

func TestExecOptions(t *testing.T) {
	base := len(chromedp.DefaultExecAllocatorOptions)

	assert.Len(t, execOptions(Options{Headless: true}), base+4)
	assert.Len(t, execOptions(Options{UserDataDir: "/tmp/profile"}), base+5)
}
