// Package packing provides the carton aggregate and finished unit entity for
// the packing stage. Finished units come out of completed finishing runs and
// are allocated exclusively to one open carton; closing a carton computes its
// actual weight, dimensional weight and fill percent exactly once.
package packing
