// Package calc implements the calculator input buffer: the token acceptance
// rules, a four-operator evaluator and the thousands-grouping display
// formatter.
package calc
