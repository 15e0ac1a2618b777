// Package qsim finds reusable answers and duplicate questions in security and
// due-diligence questionnaires.
//
// Similarity is purely lexical: questions are reduced to content tokens and
// compared by token overlap, so every score can be reproduced by hand. The
// package holds no state of its own; previously answered questions come from
// a Corpus supplied by the caller.
//
//	engine, err := qsim.NewEngine(store)
//	suggestions, err := engine.SuggestAnswers(ctx, qsim.SimilarityQuery{
//	    OrganizationID: orgID,
//	    Text:           "Do you encrypt data at rest?",
//	})
//
// Duplicate detection works on one questionnaire at a time and needs no corpus:
//
//	clusters, err := qsim.FindDuplicates(ctx, questions, qsim.DefaultConfig())
package qsim
