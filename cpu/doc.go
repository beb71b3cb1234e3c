// Package cpu implements a small 16 bit register machine and its assembler.
//
// The machine has six general purpose registers (r0-r5), a flags register
// (r6) and a program counter (r7). Arithmetic runs through the binary
// package, so every instruction reports overflow, zero, sign and parity
// flags the same way the library does.
//
// The assembler provides labels, equates, macros and compile-time
// expression evaluation. Programs assemble to a ROM of 16 bit words.
package cpu
