package dodger

// applyMilestones levels up once for every milestone crossed since prevScore.
// Returns the number of level-ups.
func (g *Game) applyMilestones(prevScore int) int {
	crossed := g.difficulty.Crossings(prevScore, g.score)
	for i := 0; i < crossed; i++ {
		g.level++
		g.obstacles.RaiseSpeeds()
		g.spawnInterval = g.difficulty.NextInterval(g.spawnInterval)
	}
	return crossed
}
