// Package serverconfig generates and updates the Terraria serverconfig.txt
// file, a flat list of key=value lines.
package serverconfig

import (
	"context"
	"strings"

	"github.com/terrariactl/terrariactl/pkg/utils"
)

type Entry struct {
	Key   string
	Value string
}

// Config is an ordered set of key=value entries. Keys keep the order of
// the first Set call.
type Config struct {
	entries []Entry
}

func New() *Config {
	return &Config{}
}

func (c *Config) Set(key string, value string) *Config {
	for i := range c.entries {
		if c.entries[i].Key == key {
			c.entries[i].Value = value

			return c
		}
	}

	c.entries = append(c.entries, Entry{Key: key, Value: value})

	return c
}

func (c *Config) Marshal() []byte {
	b := strings.Builder{}
	for _, e := range c.entries {
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(e.Value)
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// Save writes the config to path, replacing the file contents.
func (c *Config) Save(path string) error {
	return utils.WriteContentsToFile(c.Marshal(), path)
}

// UpdateFile rewrites matching key=value lines of an existing config file
// and appends entries without a matching line. Unknown keys already in the
// file are left untouched.
func (c *Config) UpdateFile(ctx context.Context, path string) error {
	if !utils.IsFileExists(path) {
		return c.Save(path)
	}

	replaceMap := make(map[string]string, len(c.entries))
	for _, e := range c.entries {
		replaceMap[e.Key+"="] = e.Key + "=" + e.Value
	}

	return utils.FindLineAndReplaceOrAdd(ctx, path, replaceMap)
}
