package model

import "strings"

// Policy names a disk scheduling policy.
type Policy string

const (
	PolicyFCFS  Policy = "FCFS"
	PolicySSTF  Policy = "SSTF"
	PolicySCAN  Policy = "SCAN"
	PolicyCSCAN Policy = "C-SCAN"
	PolicyLOOK  Policy = "LOOK"
	PolicyCLOOK Policy = "C-LOOK"
)

// Policies lists every recognized policy in canonical order.
var Policies = []Policy{PolicyFCFS, PolicySSTF, PolicySCAN, PolicyCSCAN, PolicyLOOK, PolicyCLOOK}

// PolicyDescriptions holds a one-line summary per policy.
var PolicyDescriptions = map[Policy]string{
	PolicyFCFS:  "First-Come-First-Served: service requests in arrival order",
	PolicySSTF:  "Shortest-Seek-Time-First: always move to the nearest pending request",
	PolicySCAN:  "Elevator: sweep to the disk edge, then reverse",
	PolicyCSCAN: "Circular SCAN: sweep to the edge, wrap to the opposite edge, continue in the same direction",
	PolicyLOOK:  "Like SCAN, but reverse at the last request instead of the disk edge",
	PolicyCLOOK: "Like C-SCAN, but jump straight to the farthest request on the other side",
}

// String returns the policy name.
func (p Policy) String() string {
	return string(p)
}

// Valid reports whether p is one of the recognized policies.
func (p Policy) Valid() bool {
	_, ok := PolicyDescriptions[p]
	return ok
}

// ParsePolicy resolves a policy name case-insensitively. Underscores and a
// missing dash are accepted ("c_scan", "CSCAN").
func ParsePolicy(s string) (Policy, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "CSCAN":
		name = string(PolicyCSCAN)
	case "CLOOK":
		name = string(PolicyCLOOK)
	}
	p := Policy(name)
	if !p.Valid() {
		return "", &UnknownPolicyError{Name: s}
	}
	return p, nil
}

// Direction is the travel sense of the head.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// String returns the direction name.
func (d Direction) String() string {
	return string(d)
}

// Valid reports whether d is up or down.
func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}

// InferDirection derives the travel sense from the previously serviced
// cylinder: up when previous < head, down otherwise (including previous == head).
func InferDirection(previous, head int) Direction {
	if previous < head {
		return DirectionUp
	}
	return DirectionDown
}

// ParseDirection accepts up/down and the aliases increasing/decreasing.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "increasing", "inc", "+":
		return DirectionUp, nil
	case "down", "decreasing", "dec", "-":
		return DirectionDown, nil
	}
	return "", &InputFormatError{Field: "direction", Token: s}
}
