package opengl

// vertex shader: world-space position and normal plus light-space position
// for the shadow lookup.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;
uniform mat3 normalMatrix;
uniform mat4 lightViewProj;

out vec3 fragNormal;
out vec2 fragUV;
out vec3 fragWorldPos;
out vec4 fragLightSpacePos;

void main() {
    vec4 worldPos     = model * vec4(inPosition, 1.0);
    fragWorldPos      = worldPos.xyz;
    fragNormal        = normalMatrix * inNormal;
    fragUV            = inUV;
    fragLightSpacePos = lightViewProj * worldPos;
    gl_Position       = mvp * vec4(inPosition, 1.0);
}
` + "\x00"

const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;
in vec3 fragWorldPos;
in vec4 fragLightSpacePos;

out vec4 outColor;

uniform vec3 ambientColor;
uniform vec3 cameraPos;

// Point light
uniform bool  hasLight;
uniform vec3  lightPos;
uniform vec3  lightColor;
uniform float lightIntensity;
uniform float lightRange;

// Material
uniform vec4  matColor;
uniform float matSpecular;
uniform float matShininess;
uniform bool  unlit;

// Base color texture (unit 0)
uniform sampler2D colorTex;
uniform bool      hasTexture;

// Shadow map (unit 1)
uniform sampler2DShadow shadowMap;
uniform bool            hasShadows;
uniform bool            receiveShadow;
uniform float           shadowTexel;

const float PI = 3.14159265359;

float calcShadow(float bias) {
    vec3 p = fragLightSpacePos.xyz / fragLightSpacePos.w;
    p = p * 0.5 + 0.5;
    if (fragLightSpacePos.w <= 0.0 || p.z > 1.0 ||
        p.x < 0.0 || p.x > 1.0 || p.y < 0.0 || p.y > 1.0) {
        return 1.0;
    }
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            lit += texture(shadowMap, vec3(p.xy + vec2(float(x), float(y)) * shadowTexel, p.z - bias));
        }
    }
    return lit / 9.0;
}

// inverse-square falloff, smoothly cut off at range
float attenuation(float d) {
    float falloff = 1.0 / max(d * d, 0.01);
    if (lightRange > 0.0) {
        float r = d / lightRange;
        falloff *= pow(clamp(1.0 - r * r * r * r, 0.0, 1.0), 2.0);
    }
    return falloff;
}

void main() {
    vec4 base = matColor;
    if (hasTexture) {
        base *= texture(colorTex, fragUV);
    }
    if (unlit) {
        outColor = base;
        return;
    }

    vec3 N = normalize(fragNormal);
    if (!gl_FrontFacing) {
        N = -N;
    }

    vec3 color = ambientColor * base.rgb;
    if (hasLight) {
        vec3  toLight = lightPos - fragWorldPos;
        float dist    = length(toLight);
        vec3  L       = toLight / max(dist, 1e-4);
        vec3  V       = normalize(cameraPos - fragWorldPos);
        vec3  H       = normalize(L + V);
        float NdotL   = max(dot(N, L), 0.0);

        float shadow = 1.0;
        if (hasShadows && receiveShadow) {
            shadow = calcShadow(max(0.002 * (1.0 - NdotL), 0.0005));
        }

        vec3 radiance = lightColor * lightIntensity * attenuation(dist);
        vec3 diffuse  = base.rgb / PI * NdotL;
        vec3 spec     = vec3(matSpecular) * pow(max(dot(N, H), 0.0), matShininess) * step(0.0, NdotL);
        color += radiance * (diffuse + spec) * shadow;
    }
    outColor = vec4(color, base.a);
}
` + "\x00"

// depth-only vertex shader for the shadow map pass
const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 lightMVP;
void main() {
    gl_Position = lightMVP * vec4(inPosition, 1.0);
}
` + "\x00"

// depth-only fragment shader (OpenGL writes depth implicitly)
const depthFragSrc = `
#version 410 core
void main() {}
` + "\x00"
