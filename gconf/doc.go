/*
Package gconf keeps one configuration document per extension in the state.

The document is read from the genesis file once and loaded back from the
state whenever a handler needs it, so every node executes with the same
settings.
*/
package gconf
