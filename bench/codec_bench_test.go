package bench

import (
    "testing"

    "chess-rules/chessmg"
)

func BenchmarkLoadPlacement(b *testing.B) {
    b.ReportAllocs()
    for i := 0; i < b.N; i++ {
        board := chessmg.NewBoard()
        board.LoadPlacement(chessmg.StartPlacement)
    }
}

func BenchmarkStateStringRoundTrip(b *testing.B) {
    board, err := chessmg.ParsePlacement(kiwipete)
    if err != nil { b.Fatalf("ParsePlacement: %v", err) }
    b.ReportAllocs(); b.ResetTimer()
    for i := 0; i < b.N; i++ {
        if _, err := chessmg.DecodeStateString(board.StateString()); err != nil {
            b.Fatalf("DecodeStateString: %v", err)
        }
    }
}
