package rs2ts

import (
	"testing"

	"github.com/opinionated/rs2ts/config"
	"github.com/opinionated/rs2ts/rust"
	"github.com/opinionated/rs2ts/ts"
)

// ---------------------------------------------------------------------------
// Benchmark sources at different complexity levels
// ---------------------------------------------------------------------------

// sourceSmall is a pair of constants.
const sourceSmall = `
const FOUR: u8 = 4;
const ROUGHLY_PI: f32 = 3.14;
`

// sourceMedium is a struct with a couple of functions over it.
const sourceMedium = `
pub struct Point {
    pub x: f64,
    pub y: f64,
}

pub fn origin() -> Point {
    Point { x: 0.0, y: 0.0 }
}

pub fn dist2(a: &Point, b: &Point) -> f64 {
    let dx = a.x - b.x;
    let dy = a.y - b.y;
    dx * dx + dy * dy
}
`

// sourceLarge exercises most of the accepted subset: enums, tuple and unit
// structs, loops, branches, arrays and compound assignment.
const sourceLarge = `
#[derive(Debug, Clone, Copy, PartialEq)]
pub enum Direction {
    North,
    East,
    South,
    West,
}

#[derive(Debug, Clone, Copy)]
pub struct Cell(i32, i32);

pub struct Origin;

pub struct Grid {
    pub width: usize,
    pub height: usize,
    pub cells: Vec,
    pub walls: [bool; 64],
}

const MAX_STEPS: u32 = 1_000;
const MASK: u32 = 0xFF_FF;

pub fn turn(d: Direction) -> Direction {
    if d == Direction::North {
        Direction::East
    } else if d == Direction::East {
        Direction::South
    } else if d == Direction::South {
        Direction::West
    } else {
        Direction::North
    }
}

pub fn step(c: Cell, d: Direction) -> Cell {
    let mut x = c.0;
    let mut y = c.1;
    if d == Direction::North {
        y -= 1;
    } else if d == Direction::South {
        y += 1;
    } else if d == Direction::East {
        x += 1;
    } else {
        x -= 1;
    }
    Cell(x, y)
}

pub fn walk(start: Cell, walls: &[bool]) -> u32 {
    let mut steps: u32 = 0;
    let mut here = start;
    let mut facing = Direction::North;
    loop {
        if steps >= MAX_STEPS {
            break;
        }
        let next = step(here, facing);
        let index = next.1 * 8 + next.0;
        if index < 0 || index >= 64 {
            facing = turn(facing);
            continue;
        }
        if walls[index] {
            facing = turn(facing);
        } else {
            here = next;
        }
        steps += 1;
    }
    steps & MASK
}

pub fn checksum(values: &[u32], n: usize) -> u32 {
    let mut acc: u32 = 17;
    let mut i = 0;
    while i < n {
        acc = (acc * 31 + values[i]) % 65_521;
        i += 1;
    }
    acc ^ (acc >> 4) | 1
}

pub fn marker() -> Origin {
    Origin
}
`

// sourcesByComplexity groups the sources for table-driven benchmarks.
var sourcesByComplexity = []struct {
	name   string
	source string
}{
	{"Small", sourceSmall},
	{"Medium", sourceMedium},
	{"Large", sourceLarge},
}

// ---------------------------------------------------------------------------
// Benchmarks
// ---------------------------------------------------------------------------

func BenchmarkTranspile(b *testing.B) {
	for _, sc := range sourcesByComplexity {
		b.Run(sc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(sc.source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := Transpile(sc.source); err != nil {
					b.Fatalf("transpile failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkTranspileWrapperTypes(b *testing.B) {
	t := New(config.Default().WithWrapperTypes(true))
	b.ReportAllocs()
	b.SetBytes(int64(len(sourceLarge)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := t.Transpile(sourceLarge); err != nil {
			b.Fatalf("transpile failed: %v", err)
		}
	}
}

// BenchmarkStages measures each pipeline stage in isolation on the large
// source.
func BenchmarkStages(b *testing.B) {
	tokens, err := rust.NewLexer(sourceLarge).Tokenize()
	if err != nil {
		b.Fatalf("tokenize failed: %v", err)
	}

	b.Run("Lex", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(sourceLarge)))
		for i := 0; i < b.N; i++ {
			if _, err := rust.NewLexer(sourceLarge).Tokenize(); err != nil {
				b.Fatalf("tokenize failed: %v", err)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			module, err := rust.NewParser(tokens).Parse()
			if err != nil {
				b.Fatalf("parse failed: %v", err)
			}
			if err := rust.Check(module); err != nil {
				b.Fatalf("check failed: %v", err)
			}
		}
	})

	module, err := Parse(sourceLarge)
	if err != nil {
		b.Fatalf("parse failed: %v", err)
	}

	b.Run("Generate", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := ts.Compile(module, ts.DefaultOptions()); err != nil {
				b.Fatalf("generate failed: %v", err)
			}
		}
	})
}

func TestBenchmarkSourcesTranspile(t *testing.T) {
	for _, sc := range sourcesByComplexity {
		if _, err := Transpile(sc.source); err != nil {
			t.Errorf("%s: %v", sc.name, err)
		}
	}
}
