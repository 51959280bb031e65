// Package tags keeps the free-text labels attached to clips.
//
// Tags live in named groups owned by a Manager. Every tag that lands in a
// named group is mirrored into the General group, so General always holds
// the full vocabulary. Groups and the tags inside them sort with Compare, a
// natural ordering that treats embedded digit runs as numbers ("ep2" before
// "ep10") and ignores case while scanning for the first difference.
//
// The package also reads and writes the tag file, one group per line:
//
//	name=<group>:tags=<tag>|<tag>|...
package tags
