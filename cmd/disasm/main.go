// disasm loads a raw 64 KiB memory image and disassembles it to stdout
// starting at the given PC.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/coredump65/nmos6502/disassemble"
	"github.com/coredump65/nmos6502/memory"
)

var (
	startPC = flag.Int("start_pc", 0x0000, "PC value to start disassembling")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to start loading data; the rest of the image is zero")
	length  = flag.Int("length", 0, "Number of bytes to disassemble; 0 means to the end of the loaded data")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-start_pc <pc>] [-offset <offset>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("can't open %s: %v", fn, err)
	}

	max := memory.Size - *offset
	if l := len(b); l > max {
		log.Printf("length %d at offset %d too long, truncating to fit", l, *offset)
		b = b[:max]
	}

	f := memory.NewFlat(nil)
	for i, byt := range b {
		f.Write(uint16(*offset+i), byt)
	}

	pc := uint16(*startPC)
	fmt.Printf("0x%.2X bytes at pc: %.4X\n", len(b), pc)

	n := *length
	if n == 0 {
		n = len(b)
	}
	cnt := 0
	for cnt < n {
		dis, off := disassemble.Step(pc, f)
		pc += uint16(off)
		cnt += off
		fmt.Printf("%s\n", dis)
	}
}
