// Package textutil provides text processing for place-name comparison.
//
// Restaurant and venue names arrive with accents, articles, and punctuation
// that differ between the curated database, the award dataset, and the search
// provider ("Le Café de l'Homme" vs "Cafe de l'Homme"). Names are folded to an
// accent-free lowercase form, tokenized, and compared as term-frequency
// vectors via cosine similarity.
package textutil
