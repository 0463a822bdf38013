// Command nezoba-sim runs the controller logic on a PC.
//
// The first input line holds the configuration switch bits (up to four
// 0/1 values, first bit most significant) unless --bits is given. Every
// following line lists the pressed button ids, 0 to 14, and is held for
// --hold control loop cycles.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/tuffrabit/tinygo-nezoba/pkg/mapping"
)

func main() {
	s, err := loadSettings(os.Args[1:])
	if err != nil {
		log.Fatalf("settings: %v", err)
	}

	sim := NewSim(os.Stdout, s)
	in := bufio.NewScanner(os.Stdin)

	bits := s.Bits
	if bits == "" {
		fmt.Println("SETUP: reading control bits (up to 4 0/1 values)")
		if !in.Scan() {
			return
		}
		bits = in.Text()
	}
	if _, err := sim.Boot(bits); err != nil {
		log.Fatalf("boot: %v", err)
	}

	for {
		fmt.Printf("\nreading presses (integers in [0..%d])\n", mapping.NumButtons-1)
		if !in.Scan() {
			break
		}
		if _, err := sim.Feed(in.Text()); err != nil {
			log.Printf("input: %v", err)
		}
	}
	if err := in.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
}
