package model

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	DefaultMin = 1
	DefaultMax = 6
)

// Dice rolls integers uniformly in the closed range [Min, Max].
type Dice struct {
	Min int
	Max int
}

func NewDice(min int, max int) (Dice, error) {
	if min > max {
		return Dice{}, fmt.Errorf("dice range [%d, %d]: %w", min, max, ErrInvalidRange)
	}
	return Dice{Min: min, Max: max}, nil
}

func (d Dice) RollTheDice(rolls int) []int {
	if rolls <= 0 {
		return []int{}
	}
	results := make([]int, rolls)
	for i := range results {
		results[i] = d.rollOnce()
	}
	return results
}

func (d Dice) rollOnce() int {
	return d.Min + rand.IntN(d.Max-d.Min+1)
}

var (
	ErrInvalidRange = errors.New("minimum must not exceed maximum")
)
