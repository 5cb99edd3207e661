package export

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// mdConverter is goroutine-safe and shared by all Markdown exports.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// Markdown renders items as Markdown by converting the HTML export. Each
// snippet becomes a fenced code block.
func Markdown(items []Item) (string, error) {
	doc, err := HTML(items)
	if err != nil {
		return "", err
	}
	md, err := mdConverter.ConvertString(doc)
	if err != nil {
		return "", fmt.Errorf("export: markdown conversion: %w", err)
	}
	return md, nil
}
