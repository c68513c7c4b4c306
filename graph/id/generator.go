// Package id provides collision-resistant ID generation for graph nodes,
// edges, and sessions.
//
// Node IDs combine a slug derived from the node label with a time-derived
// suffix and a short random tail, so IDs generated in the same millisecond
// still diverge. The model is also instructed to use this scheme when it
// invents IDs for new nodes, but nothing downstream depends on the model
// complying: IDs only need to be unique within one graph, and the
// synthesis and edit steps re-generate any ID that collides.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxSlugLen bounds the label-derived portion of a node ID.
const MaxSlugLen = 24

// Node generates an ID for a node with the given label.
// Format: {slug}-{unix-millis}-{4 hex chars}.
//
// Example:
//
//	id.Node("Web Frontend")  // "web-frontend-1718031254821-9f3c"
func Node(label string) string {
	return fmt.Sprintf("%s-%d-%s", Slug(label), time.Now().UnixMilli(), randomTail())
}

// Edge generates an ID for an edge between two node IDs.
func Edge(source, target string) string {
	return fmt.Sprintf("e-%s-%s-%s", Slug(source), Slug(target), randomTail())
}

// Graph generates a fresh opaque identifier for an architecture graph.
// Graph IDs are UUIDs: they must be unique across sessions, not merely
// within one graph.
func Graph() string {
	return uuid.NewString()
}

// Slug lowercases the input and replaces every non-alphanumeric run with
// a single hyphen, truncating to MaxSlugLen. An empty or fully symbolic
// input yields "node".
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		if b.Len() >= MaxSlugLen {
			break
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "node"
	}
	return out
}

// randomTail returns 4 hex characters from a CSPRNG.
func randomTail() string {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// a time-derived tail rather than panic.
		return fmt.Sprintf("%04x", time.Now().UnixNano()&0xffff)
	}
	return hex.EncodeToString(buf[:])
}
