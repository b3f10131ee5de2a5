package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"spaceship-server/internal/systems"
	"spaceship-server/pkg/balance"
)

// cluetool encodes candidate answers with the campaign ciphers and
// checks submissions against the shipped rooms. Authoring aid only;
// the server never runs it.
func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "rooms":
		for i, room := range balance.Rooms() {
			budget := room.Clue.MaxAttempts()
			fmt.Printf("%d. %-16s %-8s %-24q attempts=%d reward=%ds\n",
				i, room.ID, room.Clue.Cipher, room.Clue.Encoded, budget, room.OxygenReward/1000)
		}
	case "verify":
		if len(os.Args) < 4 {
			fmt.Println("Usage: cluetool verify <room_index> <answer>")
			return
		}
		idx, err := strconv.Atoi(os.Args[2])
		if err != nil || idx < 0 || idx >= balance.RoomCount() {
			fmt.Printf("Invalid room index (0..%d)\n", balance.RoomCount()-1)
			return
		}
		room := balance.RoomAt(idx)
		if systems.ValidateClueAnswer(room.Clue, os.Args[3]) {
			fmt.Println("correct")
		} else {
			fmt.Println("wrong")
		}
	case "encode":
		if len(os.Args) < 4 {
			fmt.Println("Usage: cluetool encode <reverse|caesar|numeric|morse> <word> [shift]")
			return
		}
		word := strings.ToUpper(os.Args[3])
		switch balance.CipherKind(strings.ToUpper(os.Args[2])) {
		case balance.CipherReverse:
			fmt.Println(reverse(word))
		case balance.CipherCaesar:
			shift := 3
			if len(os.Args) > 4 {
				if n, err := strconv.Atoi(os.Args[4]); err == nil {
					shift = n
				}
			}
			fmt.Println(caesar(word, shift))
		case balance.CipherNumeric:
			fmt.Println(numeric(word))
		case balance.CipherMorse:
			fmt.Println(morse(word))
		default:
			fmt.Printf("Unknown cipher %q\n", os.Args[2])
		}
	default:
		printHelp()
	}
}

func reverse(word string) string {
	runes := []rune(word)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func caesar(word string, shift int) string {
	shift = ((shift % 26) + 26) % 26
	var b strings.Builder
	for _, c := range word {
		if c >= 'A' && c <= 'Z' {
			c = 'A' + (c-'A'+rune(shift))%26
		}
		b.WriteRune(c)
	}
	return b.String()
}

func numeric(word string) string {
	var parts []string
	for _, c := range word {
		if c >= 'A' && c <= 'Z' {
			parts = append(parts, strconv.Itoa(int(c-'A')+1))
		}
	}
	return strings.Join(parts, "-")
}

var morseTable = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
}

func morse(word string) string {
	var parts []string
	for _, c := range word {
		if code, ok := morseTable[c]; ok {
			parts = append(parts, code)
		}
	}
	return strings.Join(parts, " ")
}

func printHelp() {
	fmt.Println(`cluetool - room clue authoring helper
Commands:
  rooms                           - list the campaign rooms and their clues
  verify <room_index> <answer>    - check an answer against a shipped room
  encode <cipher> <word> [shift]  - encode a word (reverse|caesar|numeric|morse)`)
}
