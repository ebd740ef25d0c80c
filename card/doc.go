// Package card models adaptive card forms embedded in message attachments and
// resolves them into operator answers. Only the input element kinds the
// console can collect are interpreted (text, number, single-choice, toggle,
// date, time); presentation elements are skipped, containers are walked for
// nested inputs.
package card
