// Package git reads commit hashes, patches and messages by shelling out to
// the git binary.
package git
