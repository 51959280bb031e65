package config

import (
	"bufio"
	"io"
	"strings"
)

// readLegacy applies the whitespace separated key/value format used by older
// installs:
//
//	# comment
//	clips_filename activeClipDB.txt
//	tags_filename  activeTagList.txt
//	shows_filename activeShowList.txt
//
// Unknown keys and lines with fewer than two fields are ignored.
func (c *Config) readLegacy(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "clips_filename":
			c.Paths.ClipsFile = fields[1]
		case "tags_filename":
			c.Paths.TagsFile = fields[1]
		case "shows_filename":
			c.Paths.ShowsFile = fields[1]
		}
	}
	return scanner.Err()
}
