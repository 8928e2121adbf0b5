// Package io reads card inputs and writes rendered cards to disk.
//
// # Input files
//
// An input describes one card. TOML and JSON are accepted, chosen by file
// extension (.toml, .json); stdin ("-") is read as TOML.
//
//	world_name = "Sky Islands"
//	image = "https://example.com/sky.png"
//	players = ["alice", "bob", "carol"]
//	dark_mode = true
//	show_all_players = false
//	template = "modern"
//
// [ReadInput] decodes and validates a file; [WriteSampleInput] writes a
// starter file.
//
// # Output files
//
// [DefaultFilename] derives an output name from the world name, and
// [WriteFile] writes through a temporary file so readers never observe a
// partial card.
package io
