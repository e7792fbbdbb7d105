// Package base carries the implementation details shared by every
// strategy: the commission scheme used when constructing transactions
package base

import "github.com/quantfell/backtester/holdings/commission"

// Strategy is the base implementation strategies embed
type Strategy struct {
	scheme *commission.Scheme
}

// SetCommissionScheme sets the scheme applied to emitted transactions
func (s *Strategy) SetCommissionScheme(c *commission.Scheme) {
	s.scheme = c
}

// CommissionScheme returns the configured scheme, defaulting to
// commission free when none was set
func (s *Strategy) CommissionScheme() *commission.Scheme {
	if s.scheme == nil {
		return commission.New(commission.None)
	}
	return s.scheme
}
