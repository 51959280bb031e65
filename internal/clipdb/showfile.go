package clipdb

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// malTitleElement holds the anime title in a MyAnimeList export.
const malTitleElement = "series_title"

func readShowText(r io.Reader) ([]string, error) {
	var titles []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read show file: %w", err)
	}
	return titles, nil
}

// readMALExport streams the export and collects every series_title element.
func readMALExport(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	var titles []string
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return titles, nil
		}
		if err != nil {
			return titles, fmt.Errorf("read MAL export: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != malTitleElement {
			continue
		}
		var title string
		if err := decoder.DecodeElement(&title, &start); err != nil {
			return titles, fmt.Errorf("read MAL export: %w", err)
		}
		if title = strings.TrimSpace(title); title != "" {
			titles = append(titles, title)
		}
	}
}
