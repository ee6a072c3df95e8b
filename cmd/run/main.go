// run loads a raw 64 KiB memory image and steps the core against it,
// optionally disassembling each instruction and/or rendering a live
// register/memory-page viewer in an SDL window.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/ioutil"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/coredump65/nmos6502/cpu"
	"github.com/coredump65/nmos6502/disassemble"
	"github.com/coredump65/nmos6502/memory"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	image_  = flag.String("image", "", "Path to a raw 64KiB memory image to load")
	startPC = flag.Int("start_pc", -1, "PC to start at; -1 uses the reset vector")
	debug   = flag.Bool("debug", false, "If true, disassemble and print every instruction before executing it")
	port    = flag.Int("port", 6060, "Port to run the HTTP server for pprof")
	display = flag.Bool("display", false, "If true, open an SDL window showing live register and zero-page state")
	scale   = flag.Int("scale", 2, "Scale factor for the register/memory viewer window")
	steps   = flag.Int("max_steps", 0, "Stop after this many instructions; 0 means run until a fatal error")
	every   = flag.Int("stats_every", 100000, "Print wall-clock throughput stats every this many instructions")
)

const (
	viewW = 320
	viewH = 160
)

func main() {
	flag.Parse()
	if *image_ == "" {
		log.Fatalf("usage: %s -image <path> [flags]", flag.Arg(0))
	}

	go func() {
		log.Println(http.ListenAndServe(fmt.Sprintf("localhost:%d", *port), nil))
	}()

	raw, err := ioutil.ReadFile(*image_)
	if err != nil {
		log.Fatalf("can't load image: %v", err)
	}
	mem := memory.NewFlat(nil)
	if err := memory.LoadImage(mem, raw); err != nil {
		log.Fatalf("can't load image into memory: %v", err)
	}

	c := cpu.New(mem)
	c.ColdReset()
	if *startPC >= 0 {
		c.Reg.PC = uint16(*startPC)
	}

	if *display {
		runWithDisplay(c, mem)
		return
	}
	run(c, mem)
}

func run(c *cpu.Chip, mem memory.Bank) {
	start := time.Now()
	var n int
	for {
		if *debug {
			dis, _ := disassemble.Step(c.Reg.PC, mem)
			fmt.Println(dis)
		}
		_, outcome, err := c.Step()
		n++
		if outcome == cpu.Fatal {
			log.Fatalf("fatal at instruction %d: %v", n, err)
		}
		if *every > 0 && n%*every == 0 {
			fmt.Printf("%d instructions in %s (%.0f/s)\n", n, time.Since(start), float64(n)/time.Since(start).Seconds())
		}
		if *steps > 0 && n >= *steps {
			return
		}
	}
}

func runWithDisplay(c *cpu.Chip, mem memory.Bank) {
	var window *sdl.Window
	sdl.Main(func() {
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
				log.Fatalf("can't init SDL: %v", err)
			}
			var err error
			window, err = sdl.CreateWindow("6502 core", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
				int32(viewW**scale), int32(viewH**scale), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("can't create window: %v", err)
			}
		})
		defer func() {
			window.Destroy()
			sdl.Quit()
		}()

		start := time.Now()
		var n int
		for {
			if *debug {
				dis, _ := disassemble.Step(c.Reg.PC, mem)
				fmt.Println(dis)
			}
			_, outcome, err := c.Step()
			n++
			if outcome == cpu.Fatal {
				log.Printf("fatal at instruction %d: %v", n, err)
				return
			}
			if n%1000 == 0 {
				sdl.Do(func() { drawViewer(window, c, mem) })
			}
			if *every > 0 && n%*every == 0 {
				fmt.Printf("%d instructions in %s (%.0f/s)\n", n, time.Since(start), float64(n)/time.Since(start).Seconds())
			}
			if *steps > 0 && n >= *steps {
				return
			}
		}
	})
}

// drawViewer renders the register file and the first 128 bytes of the zero
// page (0x0000-0x007F) as text into the SDL window using the x/image
// basicfont bitmap font, rather than a pixel display the spec doesn't call
// for. The stack page is not shown.
func drawViewer(window *sdl.Window, c *cpu.Chip, mem memory.Bank) {
	surface, err := window.GetSurface()
	if err != nil {
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, viewW**scale, viewH**scale))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0x00, 0xFF, 0x00, 0xFF}),
		Face: basicfont.Face7x13,
	}

	line := func(y int, format string, args ...interface{}) {
		d.Dot = fixed.P(4, y)
		d.DrawString(fmt.Sprintf(format, args...))
	}

	line(16, "PC=%04X A=%02X X=%02X Y=%02X S=%02X P=%08b", c.Reg.PC, c.Reg.A, c.Reg.X, c.Reg.Y, c.Reg.S, c.Reg.P)
	for row := 0; row < 8; row++ {
		base := uint16(row * 16)
		s := fmt.Sprintf("%04X:", base)
		for col := uint16(0); col < 16; col++ {
			s += fmt.Sprintf(" %02X", mem.Read(base+col))
		}
		line(40+row*16, "%s", s)
	}

	pix := surface.Pixels()
	copy(pix, img.Pix)
	window.UpdateSurface()
}
