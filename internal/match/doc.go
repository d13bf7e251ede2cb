// Package match suggests source field to destination path associations.
//
// Destinations are compared by their leaf key name (the last key of the
// path). A pair scores 1.0 when both names belong to the same synonym group
// ("nom", "last_name" and "fullName" all name a person's last name),
// otherwise the normalized Levenshtein similarity of the two identifiers.
// Accents, case and separators are ignored: "Prénom", "prenom" and
// "PRENOM" are the same name.
//
// Key functions:
//   - NormalizeName: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks the destinations of one source field
//   - AutoMap: accepts the high-confidence pairs of a whole field list
package match
