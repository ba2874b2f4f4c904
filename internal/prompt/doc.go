// Package prompt abstracts the interactive questions ytpd asks.
//
// Terminal draws arrow-key menus through promptui; Line is a numbered-menu
// fallback for non-terminal streams and tests. Both report an operator abort
// (Ctrl+C, EOF) as services.ErrCancelled.
package prompt
