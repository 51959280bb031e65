// Package clip models clip records and the ordered collections that hold them.
//
// A Clip is identified by show, episode and time bound. A ShowList keeps the
// clips of one show sorted by episode, then start, then end, and refuses
// duplicates. A List groups ShowLists under a user-chosen name and
// serializes itself as a List:: block of the clip file.
package clip
