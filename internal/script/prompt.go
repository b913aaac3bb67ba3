package script

import "fmt"

const systemPrompt = `You are a short-form video scriptwriter. Given a topic, produce a script
for a vertical video of 3 to 6 scenes. Respond with JSON only, using exactly
this shape:

{"scenes": [{"scene_description": "...", "narration": "..."}]}

scene_description is a vivid visual description used to generate a single
still image for the scene. narration is one or two spoken sentences. Do not
include markdown, commentary, or any keys beyond those listed.`

func userPrompt(topic string) string {
	return fmt.Sprintf("Write the scene list for a short vertical video about: %s", topic)
}
