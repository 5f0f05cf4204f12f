// Package domain defines the flashcard entities shared by the card store,
// the progress engine and the persistence layer.
package domain
