// Package cutting provides the cut lay aggregate and bundle entity for the
// cutting stage. A lay records one fabric spread with its marker, fabric
// accounting (gross split into net, offcuts and defect trim) and per-size
// piece outputs; bundles partition those outputs into traceable work packets.
package cutting
