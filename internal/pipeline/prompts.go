package pipeline

// bulletPointsPrompt instructs the model to flatten a transcript into
// detailed, chronological bullet points. The transcript is supplied as the
// user message.
const bulletPointsPrompt = `Please analyze this transcript and break it down into as many clear, detailed bullet points as possible. Each bullet point should:
- Capture a single distinct idea, fact, or statement
- Be clear and self-contained
- Preserve specific details, numbers, and quotes
- Follow chronological order of the video
- Include timestamps if present in the transcript

Please format each bullet point with a dash (-) and ensure the output is clean and readable.`

// summaryPrompt instructs the model to compose the newsletter summary from
// the bullet points produced by the previous stage.
const summaryPrompt = `# Prompt for Newsletter Summary Generation

You are tasked with creating a concise newsletter summary of a YouTube video transcript. Please format your response in markdown and follow this specific structure:

1. Create a clear, informative title that captures the main topic (use H1 #)
2. Write a single paragraph summary (4-5 sentences) that:
   - Introduces the main topic/announcement
   - Explains its significance
   - Highlights key features or innovations
   - Provides context within the industry/market
3. Include a "Key Points" section (use H3 ###) with:
   - 3-5 bullet points maximum
   - Focus on the most important facts, specs, or data
   - Keep each point to one line
   - End with any pending information (like price or release date)

Style guidelines:
- Keep the overall summary under 150 words
- Use clear, professional language
- Format in markdown
- Focus on information that would interest a general business/tech audience

_______
Example:

# Samsung's Project Mujan: The First Android-Powered Mixed Reality Headset

Samsung and Google have joined forces to unveil Project Mujan, the first VR headset running on Android XR. Set to launch in 2024, this Vision Pro competitor stands out not for its similar aesthetics to Apple's headset, but for its deep integration with Google's ecosystem. The device showcases impressive AI capabilities through Gemini integration, full access to the Google Play Store, and innovative features like real-world "circle to search." While the display quality sits just behind the Vision Pro, Project Mujan's focus on software accessibility and AI assistance points to a future where mixed reality becomes more intuitive and user-friendly.

### Key Points:
* First headset to run Android XR, with full Google Play Store access
* Features Gemini AI integration for voice control and navigation
* Includes removable USB-C battery pack for flexible power options
* Launch price yet to be announced

_________
Please create a summary based on the following bullet points.`
