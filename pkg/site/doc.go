// Package site holds the KBC Construction page content.
//
// Content is decoded from YAML. A default content file is embedded in the
// binary and can be replaced at runtime with Load. Carousel computes which
// hero slide is showing.
package site
