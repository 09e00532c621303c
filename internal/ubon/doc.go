// Package ubon implements the symmetrized UBoN variational ansatz over
// graph-structured node features.
//
// The model is built from three transforms sharing one parameter set per
// stage:
//
//	NodeMLP    (N+1,) → score, applied to every node of every graph
//	NodeLevel  (B, N) → (B, N, 1), via a fixed augmentation matrix
//	GraphLevel (B, N) → (B,), mean over nodes and a small head
//
// SymUBoN evaluates GraphLevel on x and -x and combines both branches with
// a log-sum-exp, projecting onto the trivial or the sign-alternating
// representation of the global sign flip.
//
// Example:
//
//	cfg := ubon.DefaultConfig(3)
//	aug := ubon.RandomAugmentation[float32](3, rand.New(rand.NewSource(1)))
//	model, err := ubon.New(cfg, aug)
//	if err != nil {
//	    return err
//	}
//	logPsi, err := model.Forward(features) // features: (batch, 3)
package ubon
