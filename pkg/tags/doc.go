// Package tags provides the tag vocabulary used to build a graph.
//
// Tags are slash-delimited hierarchical paths: "A/B/C" is a child of "A/B",
// which is a child of "A". A [Vocabulary] answers two questions for the
// graph builder:
//
//   - which distinct tag paths exist, with how many entries use each
//     ([Vocabulary.AllTagsWithCounts])
//   - which paths make up the hierarchy of a given tag, from least to most
//     specific ([Vocabulary.Expand])
//
// [Index] is the standard implementation, built from the tags of a source
// table. [List] is a fixed, caller-ordered vocabulary.
//
// # Normalization
//
// [Normalize] trims whitespace around each segment and drops empty segments,
// so " A / B/ " and "A/B" denote the same tag. Case is preserved.
package tags
