// Package review implements the LLM classifiers that give a second opinion
// on uncertain findings. All backends send one batched request per run and
// reject answers that do not match the verdict schema.
package review
