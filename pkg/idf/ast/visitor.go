package ast

// Visitor provides an interface for traversing a board or panel document.
// Implement this interface to perform operations on its records
// (validation, analysis, statistics, etc.).
type Visitor interface {
	VisitBoard(*BoardPanel) error
	VisitOutline(Outline) error
	VisitHole(*Hole) error
	VisitNote(*Note) error
	VisitPlacement(*ComponentPlacement) error
}

// Walk traverses the document in section order and calls the visitor
// for each record. It returns the first error encountered, or nil if
// traversal completes.
func Walk(board *BoardPanel, visitor Visitor) error {
	if err := visitor.VisitBoard(board); err != nil {
		return err
	}

	for _, outline := range board.Outlines() {
		if err := visitor.VisitOutline(outline); err != nil {
			return err
		}
	}

	for i := range board.DrilledHoles {
		if err := visitor.VisitHole(&board.DrilledHoles[i]); err != nil {
			return err
		}
	}

	for i := range board.Notes {
		if err := visitor.VisitNote(&board.Notes[i]); err != nil {
			return err
		}
	}

	for i := range board.ComponentPlacements {
		if err := visitor.VisitPlacement(&board.ComponentPlacements[i]); err != nil {
			return err
		}
	}

	return nil
}

// BaseVisitor implements Visitor with no-op methods. Embed it to override
// only the callbacks of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitBoard(*BoardPanel) error { return nil }
func (BaseVisitor) VisitOutline(Outline) error { return nil }
func (BaseVisitor) VisitHole(*Hole) error { return nil }
func (BaseVisitor) VisitNote(*Note) error { return nil }
func (BaseVisitor) VisitPlacement(*ComponentPlacement) error { return nil }
