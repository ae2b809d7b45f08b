package service

import "time"

func (s *RecencyService) SetClock(now func() time.Time)  { s.now = now }
func (s *CatalogService) SetClock(now func() time.Time)  { s.now = now }
func (s *FavoriteService) SetClock(now func() time.Time) { s.now = now }
func (s *AuthService) SetClock(now func() time.Time)     { s.now = now }
func (s *AuthService) SetBcryptCost(cost int)            { s.bcryptCost = cost }
