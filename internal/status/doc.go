// Package status implements the status-effect and aura composition engine.
//
// A Statable owns an AuraList. Auras group Effects that are enabled and
// disabled as one unit; PermanentAura lives until removed, TimedAura counts
// down on Update and removes itself. Proc effects bind a ProcChance and a Hook
// to a nested TimedAura that is (re)applied when the hooked combat event
// procs.
//
// Everything here runs on the game update loop. Nothing is safe for
// concurrent use.
package status
