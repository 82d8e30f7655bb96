package services

import "time"

// SetClock replaces the clock upload names are stamped with.
func (s *AssetService) SetClock(now func() time.Time) { s.now = now }
